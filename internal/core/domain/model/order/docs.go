// Package order provides the domain model of a cafe order: the drink kinds on
// the menu, the lines a customer asks for, and the individual items that move
// through the preparation pipeline.
//
// The package includes:
//   - Kind: the menu (Tea, Coffee)
//   - Line: one "<quantity> <kind>" request, validated on construction
//   - Item: one drink owned by one customer, the unit of preparation work
//   - Stage: the state machine every Item follows
//
// Key business rules:
//   - An order is accepted only when every line is valid (ErrInvalidOrder otherwise)
//   - Items follow Waiting -> Preparing -> Ready -> Collected
//   - Any non-terminal item may be Abandoned when its owner leaves
//   - No transition skips a stage and no transition goes backwards
package order
