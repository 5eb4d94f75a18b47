package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-sweep/internal/strategy Strategy
//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-sweep/internal/backtest/engine Engine
//go:generate mockgen -destination=./mock_candle_source.go -package=mocks github.com/rxtech-lab/argo-sweep/internal/datasource CandleSource
//go:generate mockgen -destination=./mock_recorder.go -package=mocks github.com/rxtech-lab/argo-sweep/internal/metrics Recorder
