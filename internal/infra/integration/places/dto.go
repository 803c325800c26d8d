package places

// Place is a business returned by a text search
type Place struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	WebsiteURL string `json:"website_url"`
}

type searchTextRequest struct {
	TextQuery string `json:"textQuery"`
	PageSize  int    `json:"pageSize,omitempty"`
}

type searchTextResponse struct {
	Places []placeResponse `json:"places"`
}

type placeResponse struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress         string `json:"formattedAddress"`
	NationalPhoneNumber      string `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string `json:"internationalPhoneNumber"`
	WebsiteURI               string `json:"websiteUri"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
