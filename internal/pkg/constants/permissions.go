package constants

const (
	CreateListing   = "create_listing"
	RenewListing    = "renew_listing"
	DeleteListing   = "delete_listing"
	ModerateListing = "moderate_listing"
	SubmitReview    = "submit_review"
	CreateInquiry   = "create_inquiry"
	ViewReports     = "view_reports"
	ExportReports   = "export_reports"
	ViewActivity    = "view_activity"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	CreateListing:   {Owner, Admin},
	RenewListing:    {Owner, Admin},
	DeleteListing:   {Owner, Admin},
	ModerateListing: {Admin},
	SubmitReview:    {Tenant, Admin},
	CreateInquiry:   {Tenant, Owner, Admin},
	ViewReports:     {Admin},
	ExportReports:   {Admin},
	ViewActivity:    {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
