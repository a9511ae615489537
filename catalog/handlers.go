package catalog

import (
	"context"
	"net/http"
	"time"

	"verdia/db"
	"verdia/models"
	"verdia/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPlants returns a page of plants, optional ?search= filter on name.
func GetPlants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	var plants []models.Plant
	if !findPage(ctx, w, db.PlantsCollection, filter, opts, &plants) {
		return
	}
	if plants == nil {
		plants = []models.Plant{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "plants": plants})
}

func GetPlant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var plant models.Plant
	if !findByID(w, r, db.PlantsCollection, ps.ByName("id"), &plant) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "plant": plant})
}

// GetDesigns returns a page of garden designs with their add-on services.
func GetDesigns(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := bson.M{}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	var designs []models.GardenDesign
	if !findPage(ctx, w, db.DesignsCollection, filter, opts, &designs) {
		return
	}
	if designs == nil {
		designs = []models.GardenDesign{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "designs": designs})
}

func GetDesign(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var design models.GardenDesign
	if !findByID(w, r, db.DesignsCollection, ps.ByName("id"), &design) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "design": design})
}

// GetMaintenancePackages returns all packages with their embedded options.
func GetMaintenancePackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	var packages []models.MaintenancePackage
	if !findPage(ctx, w, db.MaintenanceCollection, bson.M{}, opts, &packages) {
		return
	}
	if packages == nil {
		packages = []models.MaintenancePackage{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "packages": packages})
}

func GetMaintenancePackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var pkg models.MaintenancePackage
	if !findByID(w, r, db.MaintenanceCollection, ps.ByName("id"), &pkg) {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "package": pkg})
}

func findPage(ctx context.Context, w http.ResponseWriter, coll *mongo.Collection, filter bson.M, opts utils.QueryOptions, out any) bool {
	findOpts := options.Find().
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve catalog")
		return false
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading catalog data")
		return false
	}
	return true
}

func findByID(w http.ResponseWriter, r *http.Request, coll *mongo.Collection, id string, out any) bool {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return false
	}

	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(out); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		}
		return false
	}
	return true
}
