package newsletterservice

import (
	"errors"
	"time"
)

var ErrAlreadySubscribed = errors.New("email already subscribed")

// Subscriber status filters.
const (
	StatusAll          = "all"
	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"
)

// Audiences a newsletter can be sent to.
const (
	SendToAll          = "all"
	SendToSelected     = "selected"
	SendToUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	Unsubscribed   bool       `json:"unsubscribed"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

type SubscriberInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SubscriberFilter narrows a listing. IDs, when set, restricts it to those subscribers.
type SubscriberFilter struct {
	Status string
	IDs    []string
}

type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Date         time.Time `json:"date"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type DocumentInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	// Date is a calendar date, either YYYY-MM-DD or RFC 3339.
	Date string `json:"date"`

	date time.Time
}

// File names the stored PDF a document points at.
type File struct {
	Filename     string
	OriginalName string
}

type SendInput struct {
	Subject       string   `json:"subject"`
	Content       string   `json:"content"`
	SendTo        string   `json:"sendTo"`
	SubscriberIDs []string `json:"subscriberIds"`
}

type NewsletterService struct {
	subscribers SubscriberStore
	documents   DocumentStore
	sink        NotificationSink
	now         func() time.Time
}
