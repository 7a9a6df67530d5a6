package model

import "time"

// FormField is one field in a user-defined form schema.
type FormField struct {
	ID          string   `json:"id" bson:"id"`
	Type        string   `json:"type" bson:"type"` // text, textarea, select, radio, checkbox, rating, email, number
	Label       string   `json:"label" bson:"label"`
	Placeholder string   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty" bson:"required,omitempty"`
	Options     []string `json:"options,omitempty" bson:"options,omitempty"`
}

// FormSettings configures submission behavior.
type FormSettings struct {
	AllowAnonymous  bool   `json:"allowAnonymous" bson:"allowAnonymous"`
	CollectEmail    bool   `json:"collectEmail" bson:"collectEmail"`
	ThankYouMessage string `json:"thankYouMessage,omitempty" bson:"thankYouMessage,omitempty"`
}

// Form is a feedback form created by a user.
type Form struct {
	ID          string       `json:"id" bson:"id"`
	UserID      string       `json:"userId" bson:"userId"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Fields      []FormField  `json:"fields" bson:"fields"`
	Settings    FormSettings `json:"settings" bson:"settings"`
	IsActive    bool         `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}
