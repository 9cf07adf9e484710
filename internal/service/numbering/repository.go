// sentiric-numbering-service/internal/service/numbering/repository.go
package numbering

import (
	"context"
	"time"
)

// Plan, bir bölgenin veritabanında saklanan YAML numaralandırma planıdır.
type Plan struct {
	Region    string    `json:"region"`
	Document  string    `json:"document"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository, numaralandırma planlarının kalıcı depolamasını tanımlayan arayüzdür.
type Repository interface {
	ListPlans(ctx context.Context) ([]Plan, error)
	FindPlan(ctx context.Context, region string) (*Plan, error)
	SavePlan(ctx context.Context, plan Plan) error
	DeletePlan(ctx context.Context, region string) (int64, error)
}
