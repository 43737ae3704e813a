package dto

type PassengerRequest struct {
	ID      int       `json:"id"`
	Pickup  []float64 `json:"pickup"`
	Dropoff []float64 `json:"dropoff"`
}

type SolveRequest struct {
	Driver     []float64          `json:"driver"`
	Passengers []PassengerRequest `json:"passengers"`
}

type StopResponse struct {
	Index    int       `json:"index"`
	Location []float64 `json:"location"`
	Type     string    `json:"type"`
}

type SolveResponse struct {
	ID                  string         `json:"id"`
	Route               []StopResponse `json:"route"`
	Locations           []StopResponse `json:"locations"`
	TotalDistanceMeters float64        `json:"total_distance_meters"`
}

type RandomProblemResponse struct {
	Driver     []float64          `json:"driver"`
	Passengers []PassengerRequest `json:"passengers"`
}
