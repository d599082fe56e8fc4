package dto

type InstanceResponse struct {
	Name          string `json:"name"`
	Vertices      int    `json:"vertices"`
	Vehicles      int    `json:"vehicles"`
	Capacity      int    `json:"capacity"`
	RequiredEdges int    `json:"required_edges"`
}

type ListInstancesResponse struct {
	Instances []InstanceResponse `json:"instances"`
}
