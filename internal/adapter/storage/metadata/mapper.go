package metadata

import (
	dto "uns-resolution/internal/adapter/storage/metadata/dto"
	"uns-resolution/internal/domain/entity"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toDomainMetadata converts the raw document into its domain entity.
func toDomainMetadata(raw dto.TokenMetadataRaw) entity.TokenMetadata {
	var attributes []entity.TokenAttribute
	if raw.Attributes != nil {
		attributes = make([]entity.TokenAttribute, len(raw.Attributes))
		for i, a := range raw.Attributes {
			attributes[i] = entity.TokenAttribute{
				DisplayType: deref(a.DisplayType),
				TraitType:   deref(a.TraitType),
				Value:       string(a.Value),
			}
		}
	}

	return entity.TokenMetadata{
		Name:            deref(raw.Name),
		TokenID:         deref(raw.TokenID),
		Namehash:        deref(raw.Namehash),
		Description:     deref(raw.Description),
		ExternalURL:     deref(raw.ExternalURL),
		Image:           deref(raw.Image),
		Attributes:      attributes,
		BackgroundColor: deref(raw.BackgroundColor),
		AnimationURL:    deref(raw.AnimationURL),
		YoutubeURL:      deref(raw.YoutubeURL),
		ExternalLink:    deref(raw.ExternalLink),
		ImageData:       deref(raw.ImageData),
	}
}
