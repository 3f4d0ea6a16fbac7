package request

// PaymentNotifyRequest is the provider's success callback payload.
type PaymentNotifyRequest struct {
	OrderID string `json:"orderId" binding:"required,uuid"`
}

// PaymentCancelRequest is sent when the customer aborts checkout.
type PaymentCancelRequest struct {
	BookingID int64 `json:"bookingId" binding:"required,gt=0"`
}
