package workorder

// Status is the lifecycle stage of a work order
type Status string

const (
	StatusQuoted         Status = "QUOTED"
	StatusInProduction   Status = "IN_PRODUCTION"
	StatusInInstallation Status = "IN_INSTALLATION"
	StatusArchived       Status = "ARCHIVED"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusQuoted, StatusInProduction, StatusInInstallation, StatusArchived:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether target is the single legal successor of s.
// Work orders only ever move one stage forward.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusQuoted:
		return target == StatusInProduction
	case StatusInProduction:
		return target == StatusInInstallation
	case StatusInInstallation:
		return target == StatusArchived
	case StatusArchived:
		return false
	}
	return false
}

// IsActive reports whether the order is on the shop floor or being installed
func (s Status) IsActive() bool {
	return s == StatusInProduction || s == StatusInInstallation
}

// ProductionStatus is the workshop sub-status while an order is in production
type ProductionStatus string

const (
	ProductionNotStarted    ProductionStatus = "NOT_STARTED"
	ProductionInFabrication ProductionStatus = "IN_FABRICATION"
	ProductionPending       ProductionStatus = "PENDING"
	ProductionComplete      ProductionStatus = "COMPLETE"
)

// IsValid checks if the production status is known
func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionNotStarted, ProductionInFabrication, ProductionPending, ProductionComplete:
		return true
	}
	return false
}

// String returns the string representation of ProductionStatus
func (s ProductionStatus) String() string {
	return string(s)
}

// RequestStatus is the intake status of a work order request
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestInReview  RequestStatus = "IN_REVIEW"
	RequestQuoted    RequestStatus = "QUOTED"
	RequestCancelled RequestStatus = "CANCELLED"
)

// IsValid checks if the request status is known
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestInReview, RequestQuoted, RequestCancelled:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// IsOpen reports whether the request still awaits a quote
func (s RequestStatus) IsOpen() bool {
	return s == RequestPending || s == RequestInReview
}

// CanTransitionTo checks if the request can move to target
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestPending:
		return target == RequestInReview || target == RequestQuoted || target == RequestCancelled
	case RequestInReview:
		return target == RequestQuoted || target == RequestCancelled
	case RequestQuoted, RequestCancelled:
		return false
	}
	return false
}
