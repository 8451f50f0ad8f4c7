package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Project statuses.
const (
	StatusOnProgress = "On Progress"
	StatusFinished   = "Finished"
)

// Login types.
const (
	LoginWallet      = "Wallet"
	LoginEmail       = "Email"
	LoginSocialMedia = "Social Media"
)

// Project is one tracked airdrop campaign. Tasks are addressed by position;
// Links run parallel to Tasks and TaskProgress stores one bool per position
// for each calendar day.
type Project struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         string         `gorm:"index;not null" json:"user_id"`
	Name           string         `gorm:"not null" json:"name"`
	Details        *string        `json:"details"`
	Chain          *string        `json:"chain"`
	Status         string         `gorm:"index" json:"status"`
	LoginType      *string        `json:"login_type"`
	WalletType     *string        `json:"wallet_type"`
	WalletAddress  *string        `json:"wallet_address"`
	ContactEmail   *string        `json:"contact_email"`
	SocialType     *string        `json:"social_type"`
	SocialUsername *string        `json:"social_username"`
	DetailTask     *string        `json:"detail_task"`
	Links          StringList     `json:"links"`
	FaucetLink     *string        `json:"faucet_link"`
	Result         *string        `json:"result"`
	Tasks          StringList     `json:"tasks"`
	TaskProgress   TaskProgress   `json:"task_progress"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusOnProgress
	}
	return nil
}

// Clone returns a copy of p that shares no slices or maps with it.
func (p *Project) Clone() *Project {
	c := *p
	c.Links = append(StringList(nil), p.Links...)
	c.Tasks = append(StringList(nil), p.Tasks...)
	c.TaskProgress = p.TaskProgress.Clone()
	return &c
}

// StringList is an ordered list of strings stored as a JSON array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (StringList) GormDataType() string {
	return "json"
}

func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db)
}

// TaskProgress maps a calendar-day key (YYYY-MM-DD) to per-task completion.
type TaskProgress map[string][]bool

// Clone deep-copies the map and every day's slice.
func (tp TaskProgress) Clone() TaskProgress {
	if tp == nil {
		return nil
	}
	c := make(TaskProgress, len(tp))
	for day, done := range tp {
		c[day] = append([]bool(nil), done...)
	}
	return c
}

func (tp TaskProgress) Value() (driver.Value, error) {
	if tp == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string][]bool(tp))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (tp *TaskProgress) Scan(value interface{}) error {
	return scanJSON(value, tp)
}

func (TaskProgress) GormDataType() string {
	return "json"
}

func (TaskProgress) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db)
}

func jsonDBDataType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}

func scanJSON(value interface{}, dest interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}
