package enum

// Section names one of the twelve customization sections
type Section string

const (
	SectionInvoice        Section = "invoice"
	SectionBilling        Section = "billing"
	SectionProductFields  Section = "productFields"
	SectionCustomerFields Section = "customerFields"
	SectionDashboard      Section = "dashboard"
	SectionTableColumns   Section = "tableColumns"
	SectionAppearance     Section = "appearance"
	SectionTax            Section = "tax"
	SectionNotifications  Section = "notifications"
	SectionPaymentModes   Section = "paymentModes"
	SectionUnits          Section = "units"
	SectionCategories     Section = "categories"
)

// Sections lists every section in a stable order
var Sections = []Section{
	SectionInvoice,
	SectionBilling,
	SectionProductFields,
	SectionCustomerFields,
	SectionDashboard,
	SectionTableColumns,
	SectionAppearance,
	SectionTax,
	SectionNotifications,
	SectionPaymentModes,
	SectionUnits,
	SectionCategories,
}

func (s Section) String() string {
	return string(s)
}

// ParseSection accepts a section name; it returns false for names outside the closed set
func ParseSection(name string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}
