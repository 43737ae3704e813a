package dto

import "time"

type SolveRecordResponse struct {
	ID                  string         `json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	PassengerCount      int            `json:"passenger_count"`
	TotalDistanceMeters float64        `json:"total_distance_meters"`
	Route               []StopResponse `json:"route"`
}

type ListSolvesResponse struct {
	Solves []SolveRecordResponse `json:"solves"`
}
