package models

import "time"

// Order statuses. Only StatusConfirmed is assigned, at creation.
const (
	StatusConfirmed      = "Confirmed"
	StatusReadyForPickup = "Ready For Pickup"
	StatusPickedUp       = "Picked Up"
	StatusCompleted      = "Completed"
	StatusCancelled      = "Cancelled"
)

// OrderHeader is an order's pickup contact and totals. TotalItems and
// OrderTotalPrice are taken from the caller at creation and never
// recomputed from the details.
type OrderHeader struct {
	ID                uint          `gorm:"primaryKey" json:"orderHeaderId"`
	PickupName        string        `gorm:"size:255;not null" json:"pickupName"`
	PickupPhoneNumber string        `gorm:"size:50;not null" json:"pickupPhoneNumber"`
	PickupEmail       string        `gorm:"size:255;not null" json:"pickupEmail"`
	OrderDate         time.Time     `gorm:"not null" json:"orderDate"`
	ApplicationUserID string        `gorm:"size:36;index" json:"applicationUserId"`
	OrderTotalPrice   float64       `json:"orderTotalPrice"`
	Status            string        `gorm:"size:32;not null" json:"status"`
	TotalItems        int           `json:"totalItems"`
	OrderDetails      []OrderDetail `gorm:"constraint:OnDelete:CASCADE" json:"orderDetails"`
}

// OrderDetail is one line of an order. ItemName and Price are copies of
// the menu item at order time.
type OrderDetail struct {
	ID            uint      `gorm:"primaryKey" json:"orderDetailId"`
	OrderHeaderID uint      `gorm:"not null;index" json:"orderHeaderId"`
	MenuItemID    uint      `gorm:"not null;index" json:"menuItemId"`
	MenuItem      *MenuItem `gorm:"constraint:OnDelete:RESTRICT" json:"menuItem,omitempty"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	ItemName      string    `gorm:"size:255;not null" json:"itemName"`
	Price         float64   `gorm:"not null" json:"price"`
}
