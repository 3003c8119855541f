package domain

type UsecaseStatus string

const (
	UsecaseInitiated UsecaseStatus = "Initiated"
	UsecaseOngoing   UsecaseStatus = "Ongoing"
	UsecaseCompleted UsecaseStatus = "Completed"
	UsecaseOnHold    UsecaseStatus = "On Hold"
	UsecaseDropped   UsecaseStatus = "Dropped"
)

// ValidUsecaseStatuses is the canonical set of accepted usecase status strings.
var ValidUsecaseStatuses = map[string]bool{
	"Initiated": true, "Ongoing": true, "Completed": true,
	"On Hold": true, "Dropped": true,
}

type ProjectCodeStatus string

const (
	ProjectDraft      ProjectCodeStatus = "Draft"
	ProjectPending    ProjectCodeStatus = "Pending"
	ProjectInProgress ProjectCodeStatus = "In Progress"
	ProjectCompleted  ProjectCodeStatus = "Completed"
	ProjectDropped    ProjectCodeStatus = "Dropped/Cancelled"
	ProjectAwaiting   ProjectCodeStatus = "Awaiting"
	ProjectHold       ProjectCodeStatus = "Hold"
	ProjectClosed     ProjectCodeStatus = "Closed"
	ProjectConverted  ProjectCodeStatus = "Converted"
)

// ValidProjectCodeStatuses is the canonical set of accepted project code statuses.
var ValidProjectCodeStatuses = map[string]bool{
	"Draft": true, "Pending": true, "In Progress": true, "Completed": true,
	"Dropped/Cancelled": true, "Awaiting": true, "Hold": true,
	"Closed": true, "Converted": true,
}

type CustomerType string

const (
	CustomerDirect  CustomerType = "Direct"
	CustomerPartner CustomerType = "Partner"
)

type ProcessType string

const (
	ProcessPOC     ProcessType = "POC"
	ProcessUsecase ProcessType = "Usecase"
	ProcessDemo    ProcessType = "Demo"
)
