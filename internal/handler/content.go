package handler

// Content is the static copy shown on each page. It is plain data passed
// into the view-model constructors, so page transformations can be unit
// tested without any global manifest state.
type Content struct {
	DashboardTitle string
	DashboardIntro string

	TaskListTitle string
	TaskListIntro string

	DescriptionTitle string
	DescriptionIntro string

	SolutionsTitle string
	SolutionsIntro string

	AdditionalServicesTitle string
	AdditionalServicesIntro string

	SelectSolutionTitle string
	SelectSolutionIntro string

	SelectAdditionalServiceTitle string
	SelectAdditionalServiceIntro string

	SelectRecipientsTitle string
	SelectRecipientsIntro string

	SummaryTitle      string
	SummaryIntro      string
	SummaryPrintIntro string
}

// DefaultContent is the copy used in production.
func DefaultContent() Content {
	return Content{
		DashboardTitle: "Orders",
		DashboardIntro: "Create a new order or pick up where you left off.",

		TaskListTitle: "Order",
		TaskListIntro: "Complete each section to build your order.",

		DescriptionTitle: "Order description",
		DescriptionIntro: "Describe what you are ordering and why.",

		SolutionsTitle: "Catalogue Solutions",
		SolutionsIntro: "Catalogue Solutions added to this order, listed by service recipient.",

		AdditionalServicesTitle: "Additional Services",
		AdditionalServicesIntro: "Additional Services added to this order, listed by service recipient.",

		SelectSolutionTitle: "Select Catalogue Solution",
		SelectSolutionIntro: "Select the Catalogue Solution you want to add to this order.",

		SelectAdditionalServiceTitle: "Select Additional Service",
		SelectAdditionalServiceIntro: "Select the Additional Service you want to add to this order.",

		SelectRecipientsTitle: "Service Recipients",
		SelectRecipientsIntro: "Select the organisations you want to receive the items you are ordering.",

		SummaryTitle:      "Order summary",
		SummaryIntro:      "Review every item added to this order and its costs.",
		SummaryPrintIntro: "This order has been completed. Keep a copy for your records.",
	}
}
