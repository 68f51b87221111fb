package response

type Error struct {
	Error string `json:"error" example:"message"`
}

type Count struct {
	Count int `json:"count" example:"2"`
}
