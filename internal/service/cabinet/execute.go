package cabinet

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/medicabinet-backend/internal/parser"
)

// Execute classifies one chat line and runs the matching command.
// An unrecognized line yields a result with only Intent set and no error.
func (s *Service) Execute(ctx context.Context, cmd Command) (*CommandResult, error) {
	intent := s.parser.Parse(cmd.Text)
	res := &CommandResult{Intent: intent}

	s.log.DebugContext(ctx, "command parsed",
		slog.Int64("group_id", cmd.GroupID),
		slog.String("kind", intent.Kind.String()),
		slog.String("name", intent.Name),
	)

	var err error
	switch intent.Kind {
	case parser.KindAdd:
		res.Add, err = s.Add(ctx, AddInput{
			GroupID:   cmd.GroupID,
			Actor:     cmd.Actor,
			Name:      intent.Name,
			Quantity:  intent.Quantity,
			Unit:      intent.Unit,
			ExpiresAt: intent.ExpiresAt,
			Location:  intent.Location,
		})
	case parser.KindUse:
		res.Use, err = s.Use(ctx, UseInput{
			GroupID:  cmd.GroupID,
			Actor:    cmd.Actor,
			Name:     intent.Name,
			Quantity: intent.QuantityOr(1),
		})
	case parser.KindSearch:
		res.Search, err = s.Search(ctx, SearchInput{
			GroupID: cmd.GroupID,
			Actor:   cmd.Actor,
			Name:    intent.Name,
		})
	case parser.KindList:
		res.List, err = s.List(ctx, cmd.GroupID)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
