package dto

// BrowseFilters narrows the participant list of an event. All fields are
// optional; string filters are exact matches, age bounds are inclusive and
// computed against the event start time.
type BrowseFilters struct {
	Gender    *string `form:"gender" binding:"omitempty,oneof=male female"`
	Hashkafa  *string `form:"hashkafa" binding:"omitempty,max=100"`
	Ethnicity *string `form:"ethnicity" binding:"omitempty,max=100"`
	Education *string `form:"education" binding:"omitempty,max=200"`
	MinAge    *int    `form:"minAge" binding:"omitempty,min=18,max=120"`
	MaxAge    *int    `form:"maxAge" binding:"omitempty,min=18,max=120"`
}

// BrowseResponse is the window-gated participant listing for an event.
type BrowseResponse struct {
	EventID  int64                    `json:"eventId"`
	Profiles []*PublicProfileResponse `json:"profiles"`
}
