package market

// Status represents order lifecycle.
type Status string

const (
	StatusPlaced   Status = "PLACED"
	StatusFilled   Status = "FILLED"
	StatusCanceled Status = "CANCELED"
)

// Order holds a resting limit order as the simulator reports it.
type Order struct {
	ID      int64
	Side    Side
	Price   float64
	Size    float64
	PlaceTs int64
	Status  Status
}
