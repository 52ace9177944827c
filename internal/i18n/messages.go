package i18n

var messages = map[string]map[string]string{
	LocaleES: {
		"error.bad_request":               "Solicitud no válida",
		"error.internal_error":            "Error interno del servidor",
		"error.promotion_fetch_failed":    "No se pudieron cargar las promociones",
		"error.rate_limited":              "Demasiadas solicitudes, inténtalo de nuevo en %d segundos",
		"error.rate_limit_unavailable":    "El servicio de control de frecuencia no está disponible",
		"error.session_invalid":           "Sesión de carrito no válida",
		"error.product_not_found":         "Producto no encontrado",
		"error.product_not_available":     "El producto no está disponible",
		"error.extra_not_allowed":         "Este producto no admite ese ingrediente extra",
		"error.invalid_quantity":          "La cantidad debe ser al menos 1",
		"error.option_required":           "Falta elegir una opción obligatoria",
		"error.invalid_option":            "Opción no válida para este producto",
		"error.cart_line_not_found":       "El artículo no está en el carrito",
		"error.cart_empty":                "El carrito está vacío",
		"error.delivery_info_invalid":     "Faltan datos de entrega",
		"error.delivery_location_invalid": "No repartimos en esa localidad",
		"error.delivery_unavailable":      "Hoy no hay reparto a domicilio",
		"error.order_not_found":           "Pedido no encontrado",
		"error.order_not_cancellable":     "El pedido ya no se puede cancelar",
		"error.captcha_required":          "Introduce el código de verificación",
		"error.captcha_invalid":           "Código de verificación incorrecto",
		"error.captcha_unavailable":       "El código de verificación no está disponible",
		"error.queue_unavailable":         "La cola de tareas no está disponible",

		"whatsapp.title":      "*Nuevo pedido #%d*",
		"whatsapp.customer":   "Cliente: %s",
		"whatsapp.phone":      "Teléfono: %s",
		"whatsapp.address":    "Dirección: %s %s, %s",
		"whatsapp.notes":      "Notas: %s",
		"whatsapp.items":      "*Productos*",
		"whatsapp.without":    "Sin: %s",
		"whatsapp.extras":     "Extras: %s",
		"whatsapp.free":       "gratis",
		"whatsapp.options":    "Opciones: %s",
		"whatsapp.line_notes": "Nota: %s",
		"whatsapp.total":      "*Total: %s*",

		"email.order_confirm_subject": "Pedido #%d recibido",
		"email.order_confirm_body":    "Hola %s,\n\nHemos recibido tu pedido #%d por un total de %s.\nTe avisaremos cuando esté en camino.\n\n%s",
		"email.order_new_subject":     "Nuevo pedido #%d",
		"email.order_new_body":        "Nuevo pedido #%d de %s (%s).\nEntrega: %s %s, %s\nTotal: %s\n\n%s",
		"email.order_cancel_subject":  "Pedido #%d cancelado",
		"email.order_cancel_body":     "El pedido #%d de %s (%s) ha sido cancelado por el cliente.\nTotal: %s",
	},
	LocaleEN: {
		"error.bad_request":               "Invalid request",
		"error.internal_error":            "Internal server error",
		"error.promotion_fetch_failed":    "Could not load promotions",
		"error.rate_limited":              "Too many requests, try again in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiting is unavailable",
		"error.session_invalid":           "Invalid cart session",
		"error.product_not_found":         "Product not found",
		"error.product_not_available":     "Product is not available",
		"error.extra_not_allowed":         "This product does not accept that extra",
		"error.invalid_quantity":          "Quantity must be at least 1",
		"error.option_required":           "A required option is missing",
		"error.invalid_option":            "Invalid option for this product",
		"error.cart_line_not_found":       "Item is not in the cart",
		"error.cart_empty":                "The cart is empty",
		"error.delivery_info_invalid":     "Delivery details are incomplete",
		"error.delivery_location_invalid": "We do not deliver to that location",
		"error.delivery_unavailable":      "Delivery is closed today",
		"error.order_not_found":           "Order not found",
		"error.order_not_cancellable":     "The order can no longer be cancelled",
		"error.captcha_required":          "Please enter the verification code",
		"error.captcha_invalid":           "Wrong verification code",
		"error.captcha_unavailable":       "Verification code is unavailable",
		"error.queue_unavailable":         "Task queue is unavailable",

		"whatsapp.title":      "*New order #%d*",
		"whatsapp.customer":   "Customer: %s",
		"whatsapp.phone":      "Phone: %s",
		"whatsapp.address":    "Address: %s %s, %s",
		"whatsapp.notes":      "Notes: %s",
		"whatsapp.items":      "*Items*",
		"whatsapp.without":    "Without: %s",
		"whatsapp.extras":     "Extras: %s",
		"whatsapp.free":       "free",
		"whatsapp.options":    "Options: %s",
		"whatsapp.line_notes": "Note: %s",
		"whatsapp.total":      "*Total: %s*",

		"email.order_confirm_subject": "Order #%d received",
		"email.order_confirm_body":    "Hi %s,\n\nWe received your order #%d totalling %s.\nWe will let you know when it is on its way.\n\n%s",
		"email.order_new_subject":     "New order #%d",
		"email.order_new_body":        "New order #%d from %s (%s).\nDelivery: %s %s, %s\nTotal: %s\n\n%s",
		"email.order_cancel_subject":  "Order #%d cancelled",
		"email.order_cancel_body":     "Order #%d from %s (%s) was cancelled by the customer.\nTotal: %s",
	},
}
