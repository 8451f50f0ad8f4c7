package controllers

import (
	"strings"

	"meowdrop/backend/models"
)

// ProjectInput is the editable part of a project as sent by clients.
type ProjectInput struct {
	Name           string   `json:"name" validate:"required" example:"LayerZero"`
	Details        string   `json:"details"`
	Chain          string   `json:"chain" example:"Ethereum"`
	Status         string   `json:"status" validate:"oneof='On Progress' Finished" enums:"On Progress,Finished"`
	LoginType      string   `json:"login_type" validate:"omitempty,oneof=Wallet Email 'Social Media'" enums:"Wallet,Email,Social Media"`
	WalletType     string   `json:"wallet_type"`
	WalletAddress  string   `json:"wallet_address"`
	ContactEmail   string   `json:"contact_email"`
	SocialType     string   `json:"social_type"`
	SocialUsername string   `json:"social_username"`
	DetailTask     string   `json:"detail_task"`
	Tasks          []string `json:"tasks"`
	Links          []string `json:"links" validate:"dive,http_url"`
	FaucetLink     string   `json:"faucet_link" validate:"omitempty,http_url"`
	Result         string   `json:"result" validate:"required_if=Status Finished"`
}

// Normalize trims every field, drops blank tasks and links, defaults the
// status and maps the "Social" alias to "Social Media".
func (in *ProjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Details = strings.TrimSpace(in.Details)
	in.Chain = strings.TrimSpace(in.Chain)
	in.Status = strings.TrimSpace(in.Status)
	in.LoginType = strings.TrimSpace(in.LoginType)
	in.WalletType = strings.TrimSpace(in.WalletType)
	in.WalletAddress = strings.TrimSpace(in.WalletAddress)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.SocialType = strings.TrimSpace(in.SocialType)
	in.SocialUsername = strings.TrimSpace(in.SocialUsername)
	in.DetailTask = strings.TrimSpace(in.DetailTask)
	in.FaucetLink = strings.TrimSpace(in.FaucetLink)
	in.Result = strings.TrimSpace(in.Result)
	in.Tasks = compact(in.Tasks)
	in.Links = compact(in.Links)

	if in.Status == "" {
		in.Status = models.StatusOnProgress
	}
	if in.LoginType == "Social" {
		in.LoginType = models.LoginSocialMedia
	}
}

// Apply copies the input onto p. Identity fields that do not belong to the
// chosen login type, and the result of an unfinished project, are cleared.
func (in *ProjectInput) Apply(p *models.Project) {
	p.Name = in.Name
	p.Details = nullable(in.Details)
	p.Chain = nullable(in.Chain)
	p.Status = in.Status
	p.LoginType = nullable(in.LoginType)
	p.DetailTask = nullable(in.DetailTask)
	p.Tasks = models.StringList(in.Tasks)
	p.Links = models.StringList(in.Links)
	p.FaucetLink = nullable(in.FaucetLink)

	p.WalletType, p.WalletAddress = nil, nil
	p.ContactEmail = nil
	p.SocialType, p.SocialUsername = nil, nil
	switch in.LoginType {
	case models.LoginWallet:
		p.WalletType = nullable(in.WalletType)
		p.WalletAddress = nullable(in.WalletAddress)
	case models.LoginEmail:
		p.ContactEmail = nullable(in.ContactEmail)
	case models.LoginSocialMedia:
		p.SocialType = nullable(in.SocialType)
		p.SocialUsername = nullable(in.SocialUsername)
	}

	p.Result = nil
	if in.Status == models.StatusFinished {
		p.Result = nullable(in.Result)
	}
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
