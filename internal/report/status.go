package report

// Status is the tri-state severity of a metric or collection of metrics.
// The order matters: a collection's status is the maximum over its members.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusCritical:
		return "critical"
	case StatusWarning:
		return "warning"
	default:
		return "ok"
	}
}

// Upper returns the upper-cased status word used in alert messages and
// summary cells (OK / WARNING / CRITICAL).
func (s Status) Upper() string {
	switch s {
	case StatusCritical:
		return "CRITICAL"
	case StatusWarning:
		return "WARNING"
	default:
		return "OK"
	}
}

// Title returns the title-cased form used in detail tables.
func (s Status) Title() string {
	switch s {
	case StatusCritical:
		return "Critical"
	case StatusWarning:
		return "Warning"
	default:
		return "Ok"
	}
}

func maxStatus(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Fixed usage-percentage thresholds per metric kind, inclusive lower bounds.
var thresholds = map[string]struct{ warning, critical float64 }{
	"cpu":    {70, 90},
	"memory": {80, 90},
	"swap":   {20, 50},
	"disk":   {80, 90},
}

// Classify maps a usage percentage to a Status for the given metric kind.
// Unknown metric kinds are always ok.
func Classify(metric string, pct float64) Status {
	t, ok := thresholds[metric]
	if !ok {
		return StatusOK
	}
	switch {
	case pct >= t.critical:
		return StatusCritical
	case pct >= t.warning:
		return StatusWarning
	default:
		return StatusOK
	}
}

// DiskStatus classifies each mount independently and folds to the maximum.
func DiskStatus(disks DiskTable) Status {
	agg := StatusOK
	for _, m := range disks {
		agg = maxStatus(agg, Classify("disk", float64(m.UsedPercent())))
	}
	return agg
}

// ServiceStatus maps a reported service state to a Status. Only the exact
// strings "active" and "running" count as healthy; there is no warning
// tier for services.
func ServiceStatus(state string) Status {
	if state == "active" || state == "running" {
		return StatusOK
	}
	return StatusCritical
}

// Pct computes used/total*100, guarded against a zero total.
func Pct(used, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
