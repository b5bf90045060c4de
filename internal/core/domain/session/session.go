package session

// Customer is the slice of the signed-in customer kept in the session cookie.
type Customer struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Token     string
}

func (c Customer) DisplayName() string {
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.Email
}

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
)

// Toast is a one-shot message shown on the next rendered page.
type Toast struct {
	Type    ToastType
	Message string
}

func Success(msg string) Toast { return Toast{Type: ToastSuccess, Message: msg} }
func Error(msg string) Toast   { return Toast{Type: ToastError, Message: msg} }
func Info(msg string) Toast    { return Toast{Type: ToastInfo, Message: msg} }
