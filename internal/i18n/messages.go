package i18n

import "golang.org/x/text/language"

var messages = map[language.Tag]map[string]string{
	language.Spanish: {
		MsgFieldRequired:   "%s es obligatorio",
		MsgPositiveNumber:  "%s debe ser un número positivo",
		MsgPositiveInteger: "%s debe ser un número entero positivo",
		MsgInvalidDate:     "%s debe ser una fecha válida (AAAA-MM-DD)",
		MsgDateBeforeMin:   "%s no puede ser anterior a %s",
		MsgInvalidDebtType: "%s no es un tipo de deuda válido",
		MsgTooLong:         "%s es demasiado largo",

		MsgInvalidRequest:   "Solicitud inválida",
		MsgNotFound:         "Registro no encontrado",
		MsgUnauthorized:     "No autorizado",
		MsgForbidden:        "No tiene permisos para esta acción",
		MsgInvalidState:     "La deuda no puede cambiar a ese estado",
		MsgFeatureDisabled:  "Esta función está deshabilitada",
		MsgInternal:         "Error interno del servidor",
		MsgLoadFailed:       "No se pudieron cargar las deudas y pagos",
		MsgCreateDebtFailed: "No se pudo registrar la deuda",
		MsgCreatePayFailed:  "No se pudo registrar el pago",
		MsgStatusFailed:     "No se pudo actualizar el estado de la deuda",
		MsgDuplicate:        "El registro ya existe",

		"field.name":           "Nombre",
		"field.amount":         "Monto",
		"field.debt_type":      "Tipo de deuda",
		"field.due_date":       "Fecha de vencimiento",
		"field.installments":   "Cuotas",
		"field.description":    "Descripción",
		"field.category_id":    "Categoría",
		"field.bank_id":        "Banco",
		"field.payment_amount": "Monto del pago",
		"field.payment_date":   "Fecha de pago",
		"field.note":           "Nota",
		"field.date":           "Fecha",
		"field.role":           "Rol",
		"field.from":           "Desde",
		"field.to":             "Hasta",
	},
	language.English: {
		MsgFieldRequired:   "%s is required",
		MsgPositiveNumber:  "%s must be a positive number",
		MsgPositiveInteger: "%s must be a positive whole number",
		MsgInvalidDate:     "%s must be a valid date (YYYY-MM-DD)",
		MsgDateBeforeMin:   "%s cannot be earlier than %s",
		MsgInvalidDebtType: "%s is not a valid debt type",
		MsgTooLong:         "%s is too long",

		MsgInvalidRequest:   "Invalid request",
		MsgNotFound:         "Record not found",
		MsgUnauthorized:     "Unauthorized",
		MsgForbidden:        "You are not allowed to do this",
		MsgInvalidState:     "The debt cannot move to that status",
		MsgFeatureDisabled:  "This feature is disabled",
		MsgInternal:         "Internal server error",
		MsgLoadFailed:       "Could not load debts and payments",
		MsgCreateDebtFailed: "Could not save the debt",
		MsgCreatePayFailed:  "Could not save the payment",
		MsgStatusFailed:     "Could not update the debt status",
		MsgDuplicate:        "The record already exists",

		"field.name":           "Name",
		"field.amount":         "Amount",
		"field.debt_type":      "Debt type",
		"field.due_date":       "Due date",
		"field.installments":   "Installments",
		"field.description":    "Description",
		"field.category_id":    "Category",
		"field.bank_id":        "Bank",
		"field.payment_amount": "Payment amount",
		"field.payment_date":   "Payment date",
		"field.note":           "Note",
		"field.date":           "Date",
		"field.role":           "Role",
		"field.from":           "From",
		"field.to":             "To",
	},
	Persian: {
		MsgFieldRequired:   "%s الزامی است",
		MsgPositiveNumber:  "%s باید یک عدد مثبت باشد",
		MsgPositiveInteger: "%s باید یک عدد صحیح مثبت باشد",
		MsgInvalidDate:     "%s باید یک تاریخ معتبر باشد",
		MsgDateBeforeMin:   "%s نمی‌تواند قبل از %s باشد",
		MsgInvalidDebtType: "%s نوع بدهی معتبری نیست",
		MsgTooLong:         "%s بیش از حد طولانی است",

		MsgInvalidRequest:   "درخواست نامعتبر",
		MsgNotFound:         "رکورد یافت نشد",
		MsgUnauthorized:     "دسترسی غیرمجاز",
		MsgForbidden:        "اجازه انجام این کار را ندارید",
		MsgInvalidState:     "وضعیت بدهی قابل تغییر به این مقدار نیست",
		MsgFeatureDisabled:  "این قابلیت غیرفعال است",
		MsgInternal:         "خطای داخلی سرور",
		MsgLoadFailed:       "خطا در بارگذاری بدهی‌ها و پرداخت‌ها",
		MsgCreateDebtFailed: "خطا در ثبت بدهی",
		MsgCreatePayFailed:  "خطا در ثبت پرداخت",
		MsgStatusFailed:     "خطا در به‌روزرسانی وضعیت بدهی",
		MsgDuplicate:        "این رکورد قبلا ثبت شده است",

		"field.name":           "نام",
		"field.amount":         "مبلغ",
		"field.debt_type":      "نوع بدهی",
		"field.due_date":       "تاریخ سررسید",
		"field.installments":   "تعداد اقساط",
		"field.description":    "توضیحات",
		"field.category_id":    "دسته‌بندی",
		"field.bank_id":        "بانک",
		"field.payment_amount": "مبلغ پرداخت",
		"field.payment_date":   "تاریخ پرداخت",
		"field.note":           "یادداشت",
		"field.date":           "تاریخ",
		"field.role":           "نقش",
		"field.from":           "از تاریخ",
		"field.to":             "تا تاریخ",
	},
}
