package usecase

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateLeadInput struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type DecisionInput struct {
	Decision string `json:"decision"` // accept | decline
}

type AdminReplyInput struct {
	EstimatedQuote string `json:"estimated_quote"`
	Message        string `json:"message"`
}

type AppendMessageInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type StatsOutput struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Won     int `json:"won"`
}
