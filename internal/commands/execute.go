package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Task    func(TaskArgs) (Result, error)
	Plan    func(PlanArgs) (Result, error)
	Show    func(ShowArgs) (Result, error)
	Restore func(TargetArgs) (Result, error)
	Purge   func(TargetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTask:
		if handlers.Task == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Task(*cmd.Task)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Plan(*cmd.Plan)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeRestore:
		if handlers.Restore == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Restore(*cmd.Restore)
	case TypePurge:
		if handlers.Purge == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Purge(*cmd.Purge)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
