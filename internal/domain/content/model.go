package content

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyID    = errors.New("content id cannot be empty")
	ErrEmptyTitle = errors.New("content title cannot be empty")
	ErrNotFound   = errors.New("content not found")
)

// NavItem is a header or footer link.
type NavItem struct {
	Label string
	Href  string
}

// Program is a class offering shown on the home and programs pages.
type Program struct {
	ID          string
	Title       string
	AgeGroup    string
	Description string
	Image       string
}

// Validate checks if the Program has valid data.
// PRE: Program struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Program) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Testimonial is a quote from a parent or member.
type Testimonial struct {
	ID      int
	Name    string
	Role    string
	Content string
}

// FAQ is a question with a markdown answer.
type FAQ struct {
	Question string
	Answer   string
}

// Section is a titled markdown block on the education page.
type Section struct {
	ID    string
	Title string
	Body  string
}

// Instructor is a staff profile on the about page.
type Instructor struct {
	Name  string
	Title string
	Bio   string
}

// Nav is the header navigation.
var Nav = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "About", Href: "/about"},
	{Label: "Programs", Href: "/programs"},
	{Label: "Education", Href: "/education"},
	{Label: "FAQ", Href: "/faq"},
	{Label: "Book", Href: "/book"},
}

// FooterLinks are the quick links in the page footer.
var FooterLinks = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Programs", Href: "/programs"},
	{Label: "Class Schedule", Href: "/schedule.pdf"},
	{Label: "Contact", Href: "/book"},
}

const sharedKidsDescription = "Working through a martial art and the belt ranking system gives kids measurable goals to follow that are realistic to attain. The sense of accomplishment a child feels by mastering a new technique or graduating to a new belt follows him everywhere he goes!"

// Programs lists the class programs in display order.
var Programs = []Program{
	{
		ID:          "little-tigers",
		Title:       "Little Tigers",
		AgeGroup:    "(4-5 yr olds)",
		Description: sharedKidsDescription,
		Image:       "https://www.tigerleestkd.com/wp-content/uploads/2018/04/little-tigers-class.jpg",
	},
	{
		ID:          "children",
		Title:       "Children’s Class",
		AgeGroup:    "(6-12 yr olds)",
		Description: sharedKidsDescription,
		Image:       "https://www.tigerleestkd.com/wp-content/uploads/2018/04/children-class.jpg",
	},
	{
		ID:          "family",
		Title:       "Family Class",
		AgeGroup:    "(Kids & Adult)",
		Description: "At Tiger Lee’s , we teach families, as well as individuals. The change in a family’s demeanor after a few months is amazing. It becomes a source of fitness and team building with a bit of friendly competition, too. Many families will find that they have something in common and will share their time on an off the mat.",
		Image:       "https://www.tigerleestkd.com/wp-content/uploads/2018/04/family-class-large.jpg",
	},
	{
		ID:          "adult",
		Title:       "Adult Class",
		AgeGroup:    "(13 yr olds and up)",
		Description: "Do you need more energy, a boost in self-confidence and a great way to reduce stress? Then Tae Kwon Do may be the perfect fitness program for you!",
		Image:       "https://www.tigerleestkd.com/wp-content/uploads/2018/04/adult-classes.jpg",
	},
}

// Testimonials are shown on the home page.
var Testimonials = []Testimonial{
	{ID: 1, Name: "Jordan M.", Role: "Parent", Content: "My kids joined the program and really enjoy it. The instructors keep things fun while teaching focus and respect. We've seen a positive change at home and at school."},
	{ID: 2, Name: "Sam T.", Role: "Parent", Content: "The team does a great job keeping the class engaging. My child looks forward to every session. I signed up too and it's become a great activity we share together."},
	{ID: 3, Name: "Alex R.", Role: "Member", Content: "A place where you can learn and grow in a safe, supportive environment. The programs are well run and the community is welcoming. I'm glad we found it."},
}

// FAQs are the frequently asked questions, answers in markdown.
var FAQs = []FAQ{
	{
		Question: "What programs do you offer?",
		Answer:   "We offer programs for kids (4-5), youth (6-12), adults (13+), and families. Each program is designed for its age group and focuses on building skills, confidence, and a positive experience.",
	},
	{
		Question: "At what age can kids start?",
		Answer:   "Most children ages four and up can participate. We offer a **trial** so our instructors can work with your child one-on-one and help you find the right fit. No prior experience is required.",
	},
	{
		Question: "Is the environment safe and supportive?",
		Answer:   "Yes. Our programs emphasize respect, cooperation, and personal growth. Instructors teach in a step-by-step way so everyone can progress at their own pace in a safe, structured setting.",
	},
	{
		Question: "How safe are the classes?",
		Answer:   "Safety is a priority. We use appropriate equipment, warm-ups, and progressions. Classes are supervised by trained instructors. If you have specific concerns, we're happy to discuss them before you start.",
	},
	{
		Question: "I'm a complete beginner or out of shape. Can I still join?",
		Answer:   "Absolutely. Beginners are welcome. Our [trial](/book) and beginner programs are designed to introduce you to the basics in a supportive way. You can improve your fitness and skills gradually at your own pace.",
	},
}

// Education lists the education page sections in display order.
var Education = []Section{
	{
		ID:    "intro",
		Title: "About Our Programs",
		Body:  "Martial arts training builds the body and the mind together. The sections below cover what students and families can expect to gain from regular classes.",
	},
	{
		ID:    "fitness",
		Title: "Physical Fitness",
		Body: `Our programs offer a full-body workout that supports both fitness and mental well-being. Regular participation can lead to better health and a more active lifestyle.

**Cardio and circulation**
Classes engage multiple muscle groups and get your heart rate up, improving circulation and cardiovascular health.

**Fat loss**
Regular activity helps burn calories and, combined with a balanced lifestyle, can support healthy weight management.

**Muscle toning**
Training strengthens muscles, bones, joints, and connective tissue over time.

**Increased flexibility**
We include stretching and mobility work in sessions, which can improve flexibility with consistent practice.

**Improved stamina**
As you get stronger and more conditioned, your overall stamina and energy levels can increase.`,
	},
	{
		ID:    "focus",
		Title: "Help Improve Focus",
		Body: `**Better focus for children**

If you want to help your child improve focus and concentration, structured physical activity can make a real difference.

**The importance of exercise**

Research shows that exercise supports brain function, including attention and stress regulation. For kids, regular activity can reduce impulsivity and support readiness to learn.

**Why our programs?**

Activities that require attention to body movements and sequences help train focus and can be especially helpful for children who benefit from structure and physical engagement.`,
	},
	{
		ID:    "stress",
		Title: "Help Control Stress",
		Body: `**Control stress through exercise**

Too much stress in your life? Exercise is a great way to manage stress so that it no longer interferes with your health and happiness.

**A workout you'll enjoy**

To make exercise a stress-reducer, find something you enjoy. We build goal-setting into our programs and keep the atmosphere friendly and encouraging.`,
	},
	{
		ID:    "self-defense",
		Title: "Self Defense",
		Body: `**Learn self defense through martial arts classes**

The first rule in self-defense is to prevent a dangerous situation from developing. However, if you cannot get away and find you need to protect yourself, knowing self-defense techniques can be invaluable.

**Why our program**

Participants learn practical skills in a structured, safe environment. Building knowledge and ability can increase confidence in daily life.`,
	},
	{
		ID:    "bullying",
		Title: "Help Stop Bullying",
		Body: `We teach confidence and respect, not aggression. Building confidence is one of the best ways to help children respond to bullying and stand up for themselves in a positive way.

**Martial arts classes can help**

Martial arts classes will teach children various techniques for blocking, breaking an attacker's grasp, and other methods to protect themselves from injury.`,
	},
}

// Instructors are shown on the about page, bios in markdown.
var Instructors = []Instructor{
	{
		Name:  "Alex Chen",
		Title: "Head Instructor",
		Bio: `Alex has over 15 years of teaching and coaching experience. He is passionate about helping people of all ages build confidence and reach their goals.

He believes in combining high standards with a positive, welcoming environment so that every participant can progress at their own pace.

He is certified in First Aid and CPR and stays active in professional development to keep our offerings up to date.`,
	},
	{
		Name:  "Sam Rivera",
		Title: "Program Director",
		Bio: `Sam brings a background in education and community programs. She has worked with youth and families for over a decade.

She believes that learning works best in a supportive, inclusive environment where everyone can contribute and grow.`,
	},
}

// ProgramByID returns the program with the given ID.
func ProgramByID(id string) (Program, error) {
	for _, p := range Programs {
		if p.ID == id {
			return p, nil
		}
	}
	return Program{}, ErrNotFound
}

// SectionByID returns the education section with the given ID.
func SectionByID(id string) (Section, error) {
	for _, s := range Education {
		if s.ID == id {
			return s, nil
		}
	}
	return Section{}, ErrNotFound
}
