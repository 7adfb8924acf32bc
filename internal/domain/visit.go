package domain

import "time"

// Visit carries the request context of one inbound redirect. Every field
// besides UserAgent is optional; an empty value means the dimension is
// unknown for this visit.
type Visit struct {
	UserAgent    string
	Country      string
	ReferrerHost string
	IPAddress    string
	Device       string
}

// VisitRecord is the analytics write derived from a billable Visit.
// Day is the UTC day the visit falls into.
type VisitRecord struct {
	LinkID   int64
	Day      time.Time
	Country  string
	Device   string
	Referrer string
}

// Resolution is the outcome of resolving a slug: where to send the client
// and whether the request was diverted away from the real target.
type Resolution struct {
	TargetURL string
	Diverted  bool
}
