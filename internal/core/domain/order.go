package domain

// Order is built at checkout time and never retained after submission.
type Order struct {
	UserEmail    string
	Lines        []CartLine
	Notes        string
	ContactPhone string
}

// OrderReceipt is the remote acknowledgement of an order. ID is empty when the
// response carried no identifier.
type OrderReceipt struct {
	ID string
}

// Contact is a project brief sent from the contact form.
type Contact struct {
	Name    string
	Email   string
	Message string
}

// Complete reports whether every contact field is filled in.
func (c Contact) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Message != ""
}
