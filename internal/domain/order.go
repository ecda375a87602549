package domain

import "time"

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (i OrderItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}

type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type Order struct {
	ID              ID          `json:"_id"`
	OrderID         string      `json:"orderId"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Address         Address     `json:"address"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
	OrderStatus     string      `json:"orderStatus"`
	TotalAmount     float64     `json:"totalAmount"`
	SpecialRequests string      `json:"specialRequests,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type InvoiceCustomer struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

type InvoiceOrder struct {
	Items         []OrderItem `json:"items"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentStatus string      `json:"paymentStatus"`
	OrderStatus   string      `json:"orderStatus"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"deliveryFee"`
	TaxAmount     float64     `json:"taxAmount"`
	TotalAmount   float64     `json:"totalAmount"`
}

type InvoiceData struct {
	Customer InvoiceCustomer `json:"customer"`
	Order    InvoiceOrder    `json:"order"`
}
