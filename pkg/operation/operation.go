// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
)

// 🔌 Operation is a unit of work executed by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// OperationFunc adapts a function to Operation
type OperationFunc func(ctx context.Context) error

// Execute implements Operation
func (f OperationFunc) Execute(ctx context.Context) error {
	return f(ctx)
}
