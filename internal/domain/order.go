package domain

import "time"

type Order struct {
	ID            string     `json:"id"`
	ProductTitle  string     `json:"productTitle"`
	Price         string     `json:"price"`
	Size          *string    `json:"size,omitempty"`
	ImageURL      *string    `json:"imageUrl,omitempty"`
	CustomerPhone *string    `json:"customerPhone,omitempty"`
	ReceivedAt    time.Time  `json:"receivedAt"`
	Processed     bool       `json:"processed"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
}

const (
	MaxTitleLen = 200
	MaxPriceLen = 50
	MaxSizeLen  = 20
	MaxPhoneLen = 20
)

// ToggleProcessed flips the processed flag. ProcessedAt is stamped on the
// false→true transition and cleared on the way back.
func (o *Order) ToggleProcessed(now time.Time) {
	o.Processed = !o.Processed
	if o.Processed {
		o.ProcessedAt = &now
	} else {
		o.ProcessedAt = nil
	}
}
