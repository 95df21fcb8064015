package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData["notification"]["UserName"] == "John"
var PreviewData = map[Template]map[string]string{
	TemplateNotification: {
		"UserName": "John",
		"Content":  "You have been assigned to project Alpha.",
	},
}
