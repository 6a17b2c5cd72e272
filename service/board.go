package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"workflowpro-backend/entity"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

type BoardService struct {
	c *mongo.Collection
}

func NewBoardService(client *mongo.Client) *BoardService {
	return &BoardService{
		c: client.Database(Database).Collection("boards"),
	}
}

type CreateBoardData struct {
	ProjectID string          `json:"projectId"`
	Name      string          `json:"name"`
	Columns   []entity.Column `json:"columns"`
}

// CreateBoard inserts a board, defaulting to the three-column layout when no
// columns are given. Unlike the other creates it returns the full record:
// callers need the generated columns immediately.
func (s *BoardService) CreateBoard(ctx context.Context, data CreateBoardData) (*entity.Board, error) {
	if data.ProjectID == "" {
		return nil, errs.ErrProjectIDRequired
	}

	name := data.Name
	if name == "" {
		name = "Main Board"
	}

	columns := data.Columns
	if len(columns) == 0 {
		columns = entity.DefaultColumns()
	}
	if err := validateColumns(columns); err != nil {
		return nil, err
	}

	board := &entity.Board{
		ProjectID: data.ProjectID,
		Name:      name,
		Columns:   columns,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.c.InsertOne(ctx, board)
	if err != nil {
		log.Logger.Error("failed inserting board", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	board.ID = res.InsertedID.(primitive.ObjectID)
	return board, nil
}

// GetProjectBoards returns the project's boards in store order; boards carry
// no ordering contract.
func (s *BoardService) GetProjectBoards(ctx context.Context, projectID string) ([]entity.Board, error) {
	cursor, err := s.c.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("projectID", projectID))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	boards := []entity.Board{}
	for cursor.Next(ctx) {
		b := entity.Board{}
		if err := cursor.Decode(&b); err != nil {
			log.Logger.Error("decode error", zap.Error(err))
			return nil, errs.ErrDatabase
		}
		boards = append(boards, b)
	}
	if err := cursor.Err(); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return boards, nil
}

func (s *BoardService) GetBoard(ctx context.Context, boardID string) (*entity.Board, error) {
	id, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	b := &entity.Board{}
	err = s.c.FindOne(ctx, bson.M{"_id": id}).Decode(b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Logger.Error("database error", zap.Error(err), zap.String("boardID", boardID))
		return nil, errs.ErrDatabase
	}

	return b, nil
}

// UpdateColumns replaces the board's column layout. Tasks whose status points
// at a removed column id are not touched.
func (s *BoardService) UpdateColumns(ctx context.Context, boardID string, columns []entity.Column) error {
	id, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return errs.ErrInvalidID
	}

	if err := validateColumns(columns); err != nil {
		return err
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"columns": columns}})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err), zap.String("boardID", boardID))
		return errs.ErrDatabase
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func validateColumns(columns []entity.Column) error {
	seen := map[string]struct{}{}
	for _, c := range columns {
		if _, ok := seen[c.ID]; ok {
			return errs.ErrDuplicateColumn
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
