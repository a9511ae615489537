package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	PlantsCollection      *mongo.Collection
	DesignsCollection     *mongo.Collection
	MaintenanceCollection *mongo.Collection
	CartsCollection       *mongo.Collection
	UserCollection        *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	PlantsCollection = Client.Database("gardendb").Collection("plants")
	DesignsCollection = Client.Database("gardendb").Collection("gardendesigns")
	MaintenanceCollection = Client.Database("gardendb").Collection("maintenance")
	CartsCollection = Client.Database("gardendb").Collection("carts")
	UserCollection = Client.Database("gardendb").Collection("users")
}
