package mapper

import (
	"ai-redesign-be/internal/entity"
	"ai-redesign-be/internal/model"
)

type ImageMapper struct{}

func NewImageMapper() *ImageMapper {
	return &ImageMapper{}
}

func (m *ImageMapper) ToEntity(img *model.Image) *entity.Image {
	if img == nil {
		return nil
	}
	return &entity.Image{
		Id:                 img.Id,
		MessageId:          img.MessageId,
		S3Bucket:           img.S3Bucket,
		S3Key:              img.S3Key,
		PresignedUrl:       img.PresignedUrl,
		UrlExpiresAt:       img.UrlExpiresAt,
		ImageType:          img.ImageType,
		Width:              img.Width,
		Height:             img.Height,
		FileSize:           img.FileSize,
		MimeType:           img.MimeType,
		GenerationMetadata: jsonToMap(img.GenerationMetadata),
		CreatedAt:          img.CreatedAt,
	}
}

func (m *ImageMapper) ToModel(img *entity.Image) *model.Image {
	if img == nil {
		return nil
	}
	return &model.Image{
		Id:                 img.Id,
		MessageId:          img.MessageId,
		S3Bucket:           img.S3Bucket,
		S3Key:              img.S3Key,
		PresignedUrl:       img.PresignedUrl,
		UrlExpiresAt:       img.UrlExpiresAt,
		ImageType:          img.ImageType,
		Width:              img.Width,
		Height:             img.Height,
		FileSize:           img.FileSize,
		MimeType:           img.MimeType,
		GenerationMetadata: mapToJSON(img.GenerationMetadata),
		CreatedAt:          img.CreatedAt,
	}
}
