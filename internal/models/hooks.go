package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BeforeCreate hooks fill the UUID column when callers did not.

func (d *DocumentType) BeforeCreate(tx *gorm.DB) (err error) {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return
}

func (d *Destination) BeforeCreate(tx *gorm.DB) (err error) {
	if d.UUID == "" {
		d.UUID = uuid.New().String()
	}
	return
}

func (v *Visitor) BeforeCreate(tx *gorm.DB) (err error) {
	if v.UUID == "" {
		v.UUID = uuid.New().String()
	}
	return
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) (err error) {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	return
}

func (o *Operator) BeforeCreate(tx *gorm.DB) (err error) {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	if o.Role == "" {
		o.Role = RoleAttendant
	}
	return
}

func (r *CommonRestriction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return
}

func (r *PartialRestriction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return
}

func (r *PredictiveRestriction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return
}

func (o *Occurrence) BeforeCreate(tx *gorm.DB) (err error) {
	if o.UUID == "" {
		o.UUID = uuid.New().String()
	}
	return
}

func (p *NotificationProvider) BeforeCreate(tx *gorm.DB) (err error) {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return
}
