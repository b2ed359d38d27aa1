package entity

// TokenMetadata is the JSON document served at a domain NFT's token URI.
type TokenMetadata struct {
	Name            string           `json:"name,omitempty"`
	TokenID         string           `json:"tokenId,omitempty"`
	Namehash        string           `json:"namehash,omitempty"`
	Description     string           `json:"description,omitempty"`
	ExternalURL     string           `json:"external_url,omitempty"`
	Image           string           `json:"image,omitempty"`
	Attributes      []TokenAttribute `json:"attributes,omitempty"`
	BackgroundColor string           `json:"background_color,omitempty"`
	AnimationURL    string           `json:"animation_url,omitempty"`
	YoutubeURL      string           `json:"youtube_url,omitempty"`
	ExternalLink    string           `json:"external_link,omitempty"`
	ImageData       string           `json:"image_data,omitempty"`
}

// TokenAttribute is one trait of the token. Value is rendered as text
// whatever JSON primitive the source used.
type TokenAttribute struct {
	DisplayType string `json:"display_type,omitempty"`
	TraitType   string `json:"trait_type,omitempty"`
	Value       string `json:"value"`
}

// DNSRecord is a single DNS entry stored in domain records.
type DNSRecord struct {
	TTL  int    `json:"ttl"`
	Type string `json:"type"`
	Data string `json:"data"`
}
