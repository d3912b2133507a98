package response_models

type Destination struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Rating      float32 `json:"rating"`
	Description string  `json:"description"`
	IsFavorite  bool    `json:"is_favorite"`
}

type Hotel struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Rating      float32  `json:"rating"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Distance    string   `json:"distance"`
}

type Flight struct {
	ID            int     `json:"id"`
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flight_number"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      string  `json:"duration"`
	Price         float64 `json:"price"`
	Stops         int     `json:"stops"`
	Aircraft      string  `json:"aircraft"`
}

type Car struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Price        float64  `json:"price"`
	Rating       float32  `json:"rating"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Transmission string   `json:"transmission"`
}

type Meal struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Restaurant  string  `json:"restaurant"`
	Cuisine     string  `json:"cuisine"`
	Price       float64 `json:"price"`
	Rating      float32 `json:"rating"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

type TravelPackage struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	FlightClass string  `json:"flight_class"`
	HotelClass  string  `json:"hotel_class"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}
