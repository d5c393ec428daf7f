// Package permission holds the static role capability table.
package permission

// Role is a user's capability level within a company.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleRep     Role = "rep"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleRep:
		return true
	default:
		return false
	}
}

// Action names a gated operation.
type Action string

const (
	ActionManageCompany        Action = "manage_company"
	ActionManageBilling        Action = "manage_billing"
	ActionConfigureCRM         Action = "configure_crm"
	ActionManageTeam           Action = "manage_team"
	ActionCreateCampaigns      Action = "create_campaigns"
	ActionEditCampaigns        Action = "edit_campaigns"
	ActionDeleteCampaigns      Action = "delete_campaigns"
	ActionViewAllCampaigns     Action = "view_all_campaigns"
	ActionViewAllProspects     Action = "view_all_prospects"
	ActionEditAllProspects     Action = "edit_all_prospects"
	ActionAssignProspects      Action = "assign_prospects"
	ActionViewOwnProspects     Action = "view_own_prospects"
	ActionViewCompanyAnalytics Action = "view_company_analytics"
	ActionViewTeamPerformance  Action = "view_team_performance"
	ActionViewOwnAnalytics     Action = "view_own_analytics"
	ActionSendMessages         Action = "send_messages"
	ActionViewAllMessages      Action = "view_all_messages"
)

var adminOnly = map[Role]bool{RoleAdmin: true}
var adminManager = map[Role]bool{RoleAdmin: true, RoleManager: true}
var everyone = map[Role]bool{RoleAdmin: true, RoleManager: true, RoleRep: true}

// table is the capability lattice. Rep-level "own" scoping is a per-query
// filter at the data layer, not a row in this table.
var table = map[Action]map[Role]bool{
	ActionManageCompany:        adminOnly,
	ActionManageBilling:        adminOnly,
	ActionConfigureCRM:         adminOnly,
	ActionManageTeam:           adminManager,
	ActionCreateCampaigns:      adminManager,
	ActionEditCampaigns:        adminManager,
	ActionDeleteCampaigns:      adminOnly,
	ActionViewAllCampaigns:     adminManager,
	ActionViewAllProspects:     adminManager,
	ActionEditAllProspects:     adminManager,
	ActionAssignProspects:      adminManager,
	ActionViewOwnProspects:     everyone,
	ActionViewCompanyAnalytics: adminManager,
	ActionViewTeamPerformance:  adminManager,
	ActionViewOwnAnalytics:     everyone,
	ActionSendMessages:         everyone,
	ActionViewAllMessages:      adminManager,
}

// Allowed reports whether role may perform action. Unknown actions and
// unknown roles are always denied.
func Allowed(action Action, role Role) bool {
	roles, ok := table[action]
	if !ok {
		return false
	}
	return roles[role]
}

// Actions returns every action known to the table.
func Actions() []Action {
	out := make([]Action, 0, len(table))
	for action := range table {
		out = append(out, action)
	}
	return out
}
