package metadata_dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TokenMetadataRaw is the metadata document as served at a token URI.
type TokenMetadataRaw struct {
	Name            *string        `json:"name"`
	TokenID         *string        `json:"tokenId"`
	Namehash        *string        `json:"namehash"`
	Description     *string        `json:"description"`
	ExternalURL     *string        `json:"external_url"`
	Image           *string        `json:"image"`
	Attributes      []AttributeRaw `json:"attributes"`
	BackgroundColor *string        `json:"background_color"`
	AnimationURL    *string        `json:"animation_url"`
	YoutubeURL      *string        `json:"youtube_url"`
	ExternalLink    *string        `json:"external_link"`
	ImageData       *string        `json:"image_data"`
}

// AttributeRaw is one trait entry of the document.
type AttributeRaw struct {
	DisplayType *string        `json:"display_type"`
	TraitType   *string        `json:"trait_type"`
	Value       AttributeValue `json:"value"`
}

// AttributeValue accepts any JSON primitive and keeps its text form.
type AttributeValue string

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attribute value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = AttributeValue(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = AttributeValue(strconv.FormatBool(b))
		return nil
	case '{', '[', 'n':
		return fmt.Errorf("attribute value must be a JSON primitive, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = AttributeValue(n.String())
		return nil
	}
}
