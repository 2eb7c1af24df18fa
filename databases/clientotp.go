package databases

// go generate: mockery --name ClientOtpDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manjunath2605/courtcase-app/models"
)

const clientOtpName = "clientotps"

// ClientOtpDatabase contains the methods to use with the client otp database
type ClientOtpDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.ClientOtp, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type clientOtpDatabase struct {
	db DatabaseHelper
}

// NewClientOtpDatabase initializes a new instance of client otp database with the provided db connection
func NewClientOtpDatabase(db DatabaseHelper) ClientOtpDatabase {
	return &clientOtpDatabase{
		db: db,
	}
}

func (c *clientOtpDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.ClientOtp, error) {
	otp := &models.ClientOtp{}
	err := c.db.Collection(clientOtpName).FindOne(ctx, filter, opts...).Decode(&otp)
	if err != nil {
		return nil, err
	}
	return otp, nil
}

func (c *clientOtpDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(clientOtpName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *clientOtpDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(clientOtpName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *clientOtpDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(clientOtpName).DeleteOne(ctx, filter, opts...)
}
