package model

// TransportData is the carrier block of a delivery note. It is supplied per
// export and never persisted.
type TransportData struct {
	TransportedBy string `json:"transported_by"`
	Cedula        string `json:"cedula"`
	Plate         string `json:"plate"`
	VehicleModel  string `json:"vehicle_model"`
}
