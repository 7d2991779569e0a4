package dto

// CheckoutResponse link de pago generado en MercadoPago.
type CheckoutResponse struct {
	InitPoint    string `json:"init_point"`
	PreferenceID string `json:"preference_id"`
}

// WebhookMercadoPago cuerpo de la notificación entrante. MercadoPago envía
// variantes (`type` o `topic`, data.id o resource), de ahí los campos laxos.
type WebhookMercadoPago struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID string `json:"id"`
	} `json:"data"`
	Resource string `json:"resource"`
}

// PaymentID devuelve el id del pago sea cual sea la variante del cuerpo.
func (w WebhookMercadoPago) PaymentID() string {
	if w.Data.ID != "" {
		return w.Data.ID
	}
	return w.Resource
}

// EsPago indica si la notificación corresponde a un pago.
func (w WebhookMercadoPago) EsPago() bool {
	return w.Type == "payment" || w.Topic == "payment"
}
