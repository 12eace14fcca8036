package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type QuoteEmailData struct {
	Name string
	Body string
}
