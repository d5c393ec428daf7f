package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/permission"
)

// Overview aggregates the outreach funnel for one scope (company-wide for
// admins and managers, own assigned rows for reps). Counts are cumulative
// down the funnel: contacted includes responded, responded includes meetings.
type Overview struct {
	TotalProspects     int64 `json:"total_prospects"`
	TotalCampaigns     int64 `json:"total_campaigns"`
	ActiveCampaigns    int64 `json:"active_campaigns"`
	MessagesSent       int64 `json:"messages_sent"`
	ProspectsContacted int64 `json:"prospects_contacted"`
	ResponsesReceived  int64 `json:"responses_received"`
	MeetingsBooked     int64 `json:"meetings_booked"`
	Conversions        int64 `json:"conversions"`
	CompaniesContacted int64 `json:"companies_contacted"`
	IndustriesTargeted int64 `json:"industries_targeted"`
	ResponseRate       int   `json:"response_rate"`
	ConversionRate     int   `json:"conversion_rate"`
}

type CampaignStats struct {
	ID             snowflake.ID `json:"id"`
	Name           string       `json:"name"`
	Status         string       `json:"status"`
	TotalProspects int64        `json:"total_prospects"`
	Contacted      int64        `json:"contacted"`
	Responses      int64        `json:"responses"`
	MessagesSent   int64        `json:"messages_sent"`
	ResponseRate   int          `json:"response_rate"`
}

type TeamMemberStats struct {
	ID                snowflake.ID    `json:"id"`
	Name              string          `json:"name"`
	Role              permission.Role `json:"role"`
	ProspectsAssigned int64           `json:"prospects_assigned"`
	MessagesSent      int64           `json:"messages_sent"`
	Contacted         int64           `json:"contacted"`
	Responses         int64           `json:"responses"`
	ResponseRate      int             `json:"response_rate"`
}

// Report is the role-scoped analytics payload. Campaign and team sections
// are only present for company-scoped reports.
type Report struct {
	Role                permission.Role   `json:"role"`
	Overview            Overview          `json:"overview"`
	CampaignPerformance []CampaignStats   `json:"campaign_performance,omitempty"`
	TopCampaigns        []CampaignStats   `json:"top_campaigns,omitempty"`
	TeamPerformance     []TeamMemberStats `json:"team_performance,omitempty"`
}

type Insights struct {
	Insights    string    `json:"insights"`
	GeneratedAt time.Time `json:"generated_at"`
}
