package order

import "strings"

type TrackingRequest struct {
	Carrier           string `json:"carrier"`
	TrackingNumber    string `json:"trackingNumber"`
	EstimatedDelivery int64  `json:"estimatedDelivery"`
}

// validate accumulates every violation, mirroring the shipping validator.
func (r TrackingRequest) validate() []string {
	errors := []string{}

	if strings.TrimSpace(r.Carrier) == "" {
		errors = append(errors, "carrier is required")
	}
	if strings.TrimSpace(r.TrackingNumber) == "" {
		errors = append(errors, "tracking number is required")
	}
	if r.EstimatedDelivery <= 0 {
		errors = append(errors, "estimated delivery must be a positive epoch timestamp")
	}

	return errors
}
