// Package mongo implements storage.Store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"spendlog/internal/analytics"
	"spendlog/internal/logger"
	"spendlog/internal/models"
	"spendlog/internal/storage"
)

const (
	usersCollection    = "users"
	expensesCollection = "expenses"
	countersCollection = "counters"

	userCounter    = "users"
	expenseCounter = "expenses"
)

// ErrMissingURI is returned by Open when no connection string is configured.
var ErrMissingURI = errors.New("mongo: connection URI is required")

var _ storage.Store = (*Store)(nil)

// Options configures the connection.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	expenses *mongo.Collection
	counters *mongo.Collection
	log      *zap.SugaredLogger
}

// Open connects, verifies the deployment is reachable and ensures indexes and
// id counters exist.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}
	log := logger.Named("mongo")
	log.Infow("Connecting to MongoDB", "uri", RedactURI(opts.URI), "database", opts.Database)

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}
	if opts.SocketTimeout > 0 {
		clientOpts.SetSocketTimeout(opts.SocketTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(opts.Database)
	s := &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		expenses: db.Collection(expensesCollection),
		counters: db.Collection(countersCollection),
		log:      log,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := s.syncCounters(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Infow("MongoDB setup complete", "database", opts.Database)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	expenseIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := s.expenses.Indexes().CreateMany(ctx, expenseIndexes); err != nil {
		return fmt.Errorf("create expense indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := s.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// syncCounters raises each counter to the highest id already stored, so a
// database populated before counters existed keeps allocating unused ids.
func (s *Store) syncCounters(ctx context.Context) error {
	for name, coll := range map[string]*mongo.Collection{userCounter: s.users, expenseCounter: s.expenses} {
		var last struct {
			ID int64 `bson:"id"`
		}
		err := coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})).Decode(&last)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("read highest %s id: %w", name, err)
		}
		_, err = s.counters.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: name}},
			bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: last.ID}}}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("sync %s counter: %w", name, err)
		}
	}
	return nil
}

func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", name, err)
	}
	return counter.Seq, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	id, err := s.nextID(ctx, userCounter)
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return translate(err)
	}
	return nil
}

// ListExpenses narrows the query on the server and finishes with
// analytics.Evaluate so results match every other backend.
func (s *Store) ListExpenses(ctx context.Context, filter *models.ExpenseFilter) ([]models.Expense, error) {
	query := BuildFilter(filter)
	s.log.Debugw("Executing expense query", "filter", query)

	cur, err := s.expenses.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	var rows []models.Expense
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return analytics.Evaluate(rows, filter), nil
}

// BuildFilter translates an expense filter into a MongoDB query. The end bound
// is padded so timestamps on the end date still match.
func BuildFilter(filter *models.ExpenseFilter) bson.D {
	query := bson.D{}
	if filter == nil {
		return query
	}

	var dateRange bson.D
	if filter.StartDate != "" {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: analytics.DateOnly(filter.StartDate)})
	}
	if filter.EndDate != "" {
		dateRange = append(dateRange, bson.E{Key: "$lte", Value: analytics.DateOnly(filter.EndDate) + "\uffff"})
	}
	if len(dateRange) > 0 {
		query = append(query, bson.E{Key: "date", Value: dateRange})
	}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	return query
}

func (s *Store) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	var e models.Expense
	if err := s.expenses.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	id, err := s.nextID(ctx, expenseCounter)
	if err != nil {
		return err
	}
	expense.ID = id
	expense.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := s.expenses.InsertOne(ctx, expense); err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "description", Value: expense.Description},
		{Key: "amount", Value: expense.Amount},
		{Key: "category", Value: expense.Category},
		{Key: "date", Value: expense.Date},
		{Key: "notes", Value: expense.Notes},
		{Key: "userId", Value: expense.UserID},
	}}}
	err := s.expenses.FindOneAndUpdate(ctx,
		bson.D{{Key: "id", Value: expense.ID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(expense)
	return translate(err)
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.expenses.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	s.log.Info("MongoDB connection closed")
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	default:
		return err
	}
}

var credentialsPattern = regexp.MustCompile(`//([^:/@]+):([^@]+)@`)

// RedactURI masks the user and password of a connection string for logging.
func RedactURI(uri string) string {
	return credentialsPattern.ReplaceAllString(uri, "//***:***@")
}
