package provider

import (
	"time"

	"github.com/huongpham911/cloudwin-sub002/internal/model"
)

// Wire shapes of the provider's control-plane API. They are mapped into
// model types at this boundary so nothing downstream handles raw blobs.

type accountWire struct {
	Account struct {
		Email  string `json:"email"`
		UUID   string `json:"uuid"`
		Status string `json:"status"`
	} `json:"account"`
}

type spaceWire struct {
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
}

type spacesWire struct {
	Spaces []spaceWire `json:"spaces"`
}

type bucketWire struct {
	Name        string    `json:"name"`
	Region      string    `json:"region"`
	SizeBytes   int64     `json:"size_bytes"`
	ObjectCount int64     `json:"object_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type bucketsWire struct {
	Buckets []bucketWire `json:"buckets"`
}

type bucketEnvelopeWire struct {
	Bucket bucketWire `json:"bucket"`
}

type createBucketWire struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

func (w spaceWire) toModel() model.Space {
	return model.Space{
		Name:      w.Name,
		Region:    w.Region,
		Endpoint:  w.Endpoint,
		CreatedAt: w.CreatedAt,
	}
}

func (w bucketWire) toModel() model.Bucket {
	return model.Bucket{
		Name:        w.Name,
		Region:      w.Region,
		SizeBytes:   w.SizeBytes,
		ObjectCount: w.ObjectCount,
		CreatedAt:   w.CreatedAt,
	}
}
