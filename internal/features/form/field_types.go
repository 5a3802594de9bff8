package form

// FieldType is the closed vocabulary of form field types.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeSelect      FieldType = "select"
	FieldTypeDate        FieldType = "date"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeTextArea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypePhone       FieldType = "phone"
	FieldTypeEmail       FieldType = "email"
	FieldTypeSSN         FieldType = "ssn"
	FieldTypeVIN         FieldType = "vin"
	FieldTypeCurrency    FieldType = "currency"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeMultiSelect FieldType = "multiselect"
)

// FieldTypes lists every supported type in catalogue order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeSelect,
	FieldTypeDate,
	FieldTypeCheckbox,
	FieldTypeTextArea,
	FieldTypeNumber,
	FieldTypePhone,
	FieldTypeEmail,
	FieldTypeSSN,
	FieldTypeVIN,
	FieldTypeCurrency,
	FieldTypeRadio,
	FieldTypeMultiSelect,
}

// Widget names the input control a client renders for a field type.
type Widget string

const (
	WidgetTextInput     Widget = "text_input"
	WidgetDropdown      Widget = "dropdown"
	WidgetDatePicker    Widget = "date_picker"
	WidgetCheckbox      Widget = "checkbox"
	WidgetTextArea      Widget = "text_area"
	WidgetNumberInput   Widget = "number_input"
	WidgetPhoneInput    Widget = "phone_input"
	WidgetEmailInput    Widget = "email_input"
	WidgetMaskedInput   Widget = "masked_input"
	WidgetVINInput      Widget = "vin_input"
	WidgetCurrencyInput Widget = "currency_input"
	WidgetRadioGroup    Widget = "radio_group"
	WidgetMultiSelect   Widget = "multi_select"
)

type FieldTypeInfo struct {
	Widget Widget
	// HasOptions types are only usable with a non-empty option list.
	HasOptions  bool
	Numeric     bool
	MultiValued bool
}

// Info returns the catalogue entry for t. The switch has no default so a new type
// without an entry falls through to the unknown result.
func (t FieldType) Info() (FieldTypeInfo, bool) {
	switch t {
	case FieldTypeText:
		return FieldTypeInfo{Widget: WidgetTextInput}, true
	case FieldTypeSelect:
		return FieldTypeInfo{Widget: WidgetDropdown, HasOptions: true}, true
	case FieldTypeDate:
		return FieldTypeInfo{Widget: WidgetDatePicker}, true
	case FieldTypeCheckbox:
		return FieldTypeInfo{Widget: WidgetCheckbox}, true
	case FieldTypeTextArea:
		return FieldTypeInfo{Widget: WidgetTextArea}, true
	case FieldTypeNumber:
		return FieldTypeInfo{Widget: WidgetNumberInput, Numeric: true}, true
	case FieldTypePhone:
		return FieldTypeInfo{Widget: WidgetPhoneInput}, true
	case FieldTypeEmail:
		return FieldTypeInfo{Widget: WidgetEmailInput}, true
	case FieldTypeSSN:
		return FieldTypeInfo{Widget: WidgetMaskedInput}, true
	case FieldTypeVIN:
		return FieldTypeInfo{Widget: WidgetVINInput}, true
	case FieldTypeCurrency:
		return FieldTypeInfo{Widget: WidgetCurrencyInput, Numeric: true}, true
	case FieldTypeRadio:
		return FieldTypeInfo{Widget: WidgetRadioGroup, HasOptions: true}, true
	case FieldTypeMultiSelect:
		return FieldTypeInfo{Widget: WidgetMultiSelect, HasOptions: true, MultiValued: true}, true
	}
	return FieldTypeInfo{}, false
}

func (t FieldType) Valid() bool {
	_, ok := t.Info()
	return ok
}
