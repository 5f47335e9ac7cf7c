package dto

type PreviewQuery struct {
	InvitationID string `form:"invitationId" binding:"required,max=256"`
	DraftKey     string `form:"draftKey" binding:"required,max=256"`
}

type ExitPreviewQuery struct {
	Redirect string `form:"redirect"`
}

type ContentQuery struct {
	InvitationID string `form:"invitationId" binding:"required"`
	DraftKey     string `form:"draftKey"`
}
