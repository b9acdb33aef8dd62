// This package is intended to help user merge dynamic sets of value streams.

// To install conveyor:
// 	go get -u github.com/andriiyaremenko/conveyor

// How to use:
//
// Engine:
// import (
// 	"context"
// 	"fmt"
//
// 	"github.com/andriiyaremenko/conveyor"
// )
// func main() {
// 	ctx := context.Background()
//
// 	e := conveyor.New(func(ctx context.Context, v int, _ struct{}) (conveyor.Step[int], error) {
// 		return conveyor.Yield(v * v), nil
// 	})
// 	e.Add(conveyor.FromValues(1, 2, 3), struct{}{})
// 	e.Add(conveyor.FromValues(4, 5, 6), struct{}{})
//
// 	for v, err := range e.All(ctx) {
// 		// handle error
// 		if err != nil {
// 			continue
// 		}
//
// 		// use value:
// 		fmt.Println(v)
// 	}
// }
//
// Worker:
// import (
// 	"context"
// 	"iter"
//
// 	"github.com/andriiyaremenko/conveyor"
// )
// func main() {
// 	ctx := context.Background()
//
// 	e := conveyor.New(conveyor.PassThrough[int, struct{}]())
//
// 	eventSink := func(result iter.Seq2[int, error]) {
// 		err := conveyor.ForEach(
// 			result,
// 			func(i int, v int) {
// 				// use value
// 			},
// 			conveyor.NoError,
// 		)
//
// 		// handle error
// 		_ = err
// 	}
//
// 	w := conveyor.NewWorker(ctx, eventSink, e)
// 	err := w.Handle(conveyor.FromValues(1, 2, 3), struct{}{})
//
// 	// handle worker shut down error
// 	_ = err
// }
package conveyor
