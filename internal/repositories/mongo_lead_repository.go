package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pizocrm/internal/models"
)

const (
	leadsCollection     = "negocios"
	promotersCollection = "promoters"
)

// ConnectMongo dials uri and checks the server answers.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type leadDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	PropertyType    string             `bson:"propertyType"`
	TransactionType string             `bson:"transactionType"`
	CondoName       string             `bson:"condoName"`
	Price           float64            `bson:"price"`
	Comision        *float64           `bson:"comision,omitempty"`
	PorcentajePizo  *float64           `bson:"porcentajePizo,omitempty"`
	Estatus         string             `bson:"estatus"`
	Dormido         bool               `bson:"dormido"`
	DormidoHasta    *time.Time         `bson:"dormidoHasta,omitempty"`
	NombreCompleto  string             `bson:"nombreCompleto"`
	Telefono        string             `bson:"telefono"`
	Correo          string             `bson:"correo"`
	OrigenTexto     string             `bson:"origenTexto"`
	OrigenURL       string             `bson:"origenUrl"`
	Asesor          string             `bson:"asesor"`
	AsesorAliado    string             `bson:"asesorAliado"`
	PromotorID      string             `bson:"promotorId"`
	FechaCreacion   time.Time          `bson:"fechaCreacion"`
	FechaCierre     *time.Time         `bson:"fechaCierre,omitempty"`
	Notas           string             `bson:"notas"`
	Calidad         int                `bson:"calidad"`
}

func toLeadDocument(l *models.Lead) leadDocument {
	return leadDocument{
		PropertyType:    l.PropertyType,
		TransactionType: string(l.TransactionType),
		CondoName:       l.CondoName,
		Price:           l.Price,
		Comision:        l.Comision,
		PorcentajePizo:  l.PorcentajePizo,
		Estatus:         string(l.Estatus),
		Dormido:         l.Dormido,
		DormidoHasta:    l.DormidoHasta,
		NombreCompleto:  l.NombreCompleto,
		Telefono:        l.Telefono,
		Correo:          l.Correo,
		OrigenTexto:     l.OrigenTexto,
		OrigenURL:       l.OrigenURL,
		Asesor:          l.Asesor,
		AsesorAliado:    l.AsesorAliado,
		PromotorID:      l.PromotorID,
		FechaCreacion:   l.FechaCreacion,
		FechaCierre:     l.FechaCierre,
		Notas:           l.Notas,
		Calidad:         l.Calidad,
	}
}

func (d leadDocument) toModel() models.Lead {
	return models.Lead{
		ID:              d.ID.Hex(),
		PropertyType:    d.PropertyType,
		TransactionType: models.TransactionType(d.TransactionType),
		CondoName:       d.CondoName,
		Price:           d.Price,
		Comision:        d.Comision,
		PorcentajePizo:  d.PorcentajePizo,
		Estatus:         models.LeadStatus(d.Estatus),
		Dormido:         d.Dormido,
		DormidoHasta:    d.DormidoHasta,
		NombreCompleto:  d.NombreCompleto,
		Telefono:        d.Telefono,
		Correo:          d.Correo,
		OrigenTexto:     d.OrigenTexto,
		OrigenURL:       d.OrigenURL,
		Asesor:          d.Asesor,
		AsesorAliado:    d.AsesorAliado,
		PromotorID:      d.PromotorID,
		FechaCreacion:   d.FechaCreacion,
		FechaCierre:     d.FechaCierre,
		Notas:           d.Notas,
		Calidad:         d.Calidad,
	}
}

// MongoLeadRepository stores leads in the negocios collection.
type MongoLeadRepository struct {
	col *mongo.Collection
}

func NewMongoLeadRepository(db *mongo.Database) *MongoLeadRepository {
	return &MongoLeadRepository{col: db.Collection(leadsCollection)}
}

// EnsureIndexes creates the indexes the board and the wake job query on.
func (r *MongoLeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "asesor", Value: 1}}},
		{Keys: bson.D{{Key: "dormido", Value: 1}, {Key: "dormidoHasta", Value: 1}}},
		{Keys: bson.D{{Key: "fechaCreacion", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("lead indexes: %w", err)
	}
	return nil
}

func (r *MongoLeadRepository) Create(ctx context.Context, lead *models.Lead) (string, error) {
	res, err := r.col.InsertOne(ctx, toLeadDocument(lead))
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *MongoLeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc leadDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l := doc.toModel()
	return &l, nil
}

func (r *MongoLeadRepository) List(ctx context.Context, f models.StoreFilter) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fechaCreacion", Value: -1}, {Key: "_id", Value: 1}})
	return r.find(ctx, BuildLeadFilter(f), opts)
}

func (r *MongoLeadRepository) ListExpiredDormant(ctx context.Context, now time.Time) ([]models.Lead, error) {
	filter := bson.M{"dormido": true, "dormidoHasta": bson.M{"$ne": nil, "$lte": now}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "dormidoHasta", Value: 1}}))
}

func (r *MongoLeadRepository) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	update := BuildLeadUpdate(patch)
	if len(update) == 0 {
		return nil
	}
	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *MongoLeadRepository) WakeIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	off := false
	filter := bson.M{"_id": oid, "dormido": true, "dormidoHasta": bson.M{"$ne": nil, "$lte": now}}
	res, err := r.col.UpdateOne(ctx, filter, BuildLeadUpdate(models.LeadPatch{Dormido: &off, ClearDormidoHasta: true}))
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoLeadRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *MongoLeadRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Lead, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []leadDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Lead, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// BuildLeadFilter renders the store filter as a mongo query.
func BuildLeadFilter(f models.StoreFilter) bson.M {
	filter := bson.M{}
	var and []bson.M

	if f.TransactionType != nil {
		filter["transactionType"] = string(*f.TransactionType)
	}
	if f.Asesor != nil {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"asesor": *f.Asesor},
			bson.M{"asesorAliado": *f.Asesor},
		}})
	}
	if f.PromotorID != nil {
		filter["promotorId"] = *f.PromotorID
	}
	if !f.ShowDormant {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"dormido": false},
			bson.M{"dormidoHasta": bson.M{"$ne": nil, "$lte": now}},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

// BuildLeadUpdate renders a patch as $set / $unset.
func BuildLeadUpdate(p models.LeadPatch) bson.M {
	set := bson.M{}
	unset := bson.M{}

	if p.PropertyType != nil {
		set["propertyType"] = *p.PropertyType
	}
	if p.TransactionType != nil {
		set["transactionType"] = string(*p.TransactionType)
	}
	if p.CondoName != nil {
		set["condoName"] = *p.CondoName
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Comision != nil {
		set["comision"] = *p.Comision
	}
	if p.PorcentajePizo != nil {
		set["porcentajePizo"] = *p.PorcentajePizo
	}
	if p.Estatus != nil {
		set["estatus"] = string(*p.Estatus)
	}
	if p.Dormido != nil {
		set["dormido"] = *p.Dormido
	}
	if p.ClearDormidoHasta {
		unset["dormidoHasta"] = ""
	} else if p.DormidoHasta != nil {
		set["dormidoHasta"] = *p.DormidoHasta
	}
	if p.NombreCompleto != nil {
		set["nombreCompleto"] = *p.NombreCompleto
	}
	if p.Telefono != nil {
		set["telefono"] = *p.Telefono
	}
	if p.Correo != nil {
		set["correo"] = *p.Correo
	}
	if p.OrigenTexto != nil {
		set["origenTexto"] = *p.OrigenTexto
	}
	if p.OrigenURL != nil {
		set["origenUrl"] = *p.OrigenURL
	}
	if p.Asesor != nil {
		set["asesor"] = *p.Asesor
	}
	if p.AsesorAliado != nil {
		set["asesorAliado"] = *p.AsesorAliado
	}
	if p.PromotorID != nil {
		set["promotorId"] = *p.PromotorID
	}
	if p.ClearFechaCierre {
		unset["fechaCierre"] = ""
	} else if p.FechaCierre != nil {
		set["fechaCierre"] = *p.FechaCierre
	}
	if p.Notas != nil {
		set["notas"] = *p.Notas
	}
	if p.Calidad != nil {
		set["calidad"] = *p.Calidad
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
