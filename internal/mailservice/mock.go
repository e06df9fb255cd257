package mailservice

import (
	"bytes"
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/contenthub/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, msg common.Message, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}
