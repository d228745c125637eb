/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package kind defines the closed set of failure kinds of the apperr taxonomy.
//
// A kind is the top-level, machine-readable classification of an application
// failure: where it came from (the environment, the input records, or the
// concurrent task machinery) and which fixed message template renders it.
//
// Kinds are:
//
//   - short and stable;
//   - lowercased and underscore-separated;
//   - members of a closed set: Parse rejects anything outside All().
//
// The zero value ("") is Empty and is never a valid kind.
package kind
