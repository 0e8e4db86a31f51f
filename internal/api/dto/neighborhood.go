package dto

type NeighborhoodResponse struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	RecordCount int    `json:"record_count"`
}

type ListNeighborhoodsResponse struct {
	Neighborhoods []NeighborhoodResponse `json:"neighborhoods"`
}
