package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant types on the platform.
const (
	UserTypeAdvisor     = "advisor"
	UserTypeLaboratory  = "laboratory"
	UserTypeDistributor = "distributor"
)

// Admin-controlled approval gate on a profile.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Profile represents a registered participant (advisor, laboratory or
// distributor). Visibility in directories and actionability of connection
// requests are gated on ApprovalStatus, which only admins change.
type Profile struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID  `bson:"user_id" json:"user_id"`
	FullName          string              `bson:"full_name" json:"full_name"`
	Email             string              `bson:"email" json:"email"`
	AvatarURL         string              `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Headline          string              `bson:"headline,omitempty" json:"headline,omitempty"`
	Bio               string              `bson:"bio,omitempty" json:"bio,omitempty"`
	Organisation      string              `bson:"organisation,omitempty" json:"organisation,omitempty"`
	Location          string              `bson:"location,omitempty" json:"location,omitempty"`
	Region            string              `bson:"region,omitempty" json:"region,omitempty"`
	ContactNumber     string              `bson:"contact_number,omitempty" json:"contact_number,omitempty"`
	LinkedinURL       string              `bson:"linkedin_url,omitempty" json:"linkedin_url,omitempty"`
	WebsiteURL        string              `bson:"website_url,omitempty" json:"website_url,omitempty"`
	UserType          string              `bson:"user_type" json:"user_type"`
	ApprovalStatus    string              `bson:"approval_status" json:"approval_status"`
	Expertise         string              `bson:"expertise,omitempty" json:"expertise,omitempty"`
	ResearchAreas     string              `bson:"research_areas,omitempty" json:"research_areas,omitempty"`
	Services          string              `bson:"services,omitempty" json:"services,omitempty"`
	MentoringAreas    string              `bson:"mentoring_areas,omitempty" json:"mentoring_areas,omitempty"`
	Languages         string              `bson:"languages,omitempty" json:"languages,omitempty"`
	Education         string              `bson:"education,omitempty" json:"education,omitempty"`
	Experience        string              `bson:"experience,omitempty" json:"experience,omitempty"`
	YearsOfExperience int                 `bson:"years_of_experience,omitempty" json:"years_of_experience,omitempty"`
	CompanyType       string              `bson:"company_type,omitempty" json:"company_type,omitempty"`
	CompanySize       string              `bson:"company_size,omitempty" json:"company_size,omitempty"`
	FoundedYear       int                 `bson:"founded_year,omitempty" json:"founded_year,omitempty"`
	DistributionCap   string              `bson:"distribution_capacity,omitempty" json:"distribution_capacity,omitempty"`
	IndustryExpertise string              `bson:"industry_expertise,omitempty" json:"industry_expertise,omitempty"`
	InviteTokenID     *primitive.ObjectID `bson:"invite_token_id,omitempty" json:"invite_token_id,omitempty"`
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
}

// PublicProfile is the summary of a profile exposed to other participants,
// e.g. as the counterpart of a connection.
type PublicProfile struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	AvatarURL    string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Headline     string             `bson:"headline,omitempty" json:"headline,omitempty"`
	Organisation string             `bson:"organisation,omitempty" json:"organisation,omitempty"`
	UserType     string             `bson:"user_type" json:"user_type"`
}

// Public returns the profile's public summary.
func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:           p.ID,
		FullName:     p.FullName,
		AvatarURL:    p.AvatarURL,
		Headline:     p.Headline,
		Organisation: p.Organisation,
		UserType:     p.UserType,
	}
}
