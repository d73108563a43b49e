package common

// Tender statuses.
const (
	Created   = "Created"
	Published = "Published"
	Closed    = "Closed"
)

// Bid-only status.
const Canceled = "Canceled"

// Tender service types.
const (
	Construction = "Construction"
	Delivery     = "Delivery"
	Manufacture  = "Manufacture"
)

// Bid author types.
const (
	AuthorUser         = "User"
	AuthorOrganization = "Organization"
)

// Reviewer decisions.
const (
	ApprovedDecision = "Approved"
	RejectedDecision = "Rejected"
)

// MaxQuorum caps the number of approvals needed to close a tender. The
// effective quorum for a tender is min(MaxQuorum, responsibles of the
// owning organization).
const MaxQuorum = 3
